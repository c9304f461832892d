package federated

import "fmt"

// Kakao reads the kakao userinfo payload, which nests the email under
// kakao_account and the nickname under properties:
//
//	{"id": 123, "kakao_account": {"email": "..."}, "properties": {"nickname": "..."}}
type Kakao struct{}

var _ Provider = Kakao{}

func (Kakao) Name() string {
	return "kakao"
}

func (Kakao) ExtractEmail(attrs map[string]any) (string, error) {
	account := mapAttr(attrs, "kakao_account")
	email := stringAttr(account, "email")
	if email == "" {
		return "", ErrMissingEmail
	}
	return email, nil
}

func (Kakao) ExtractDisplayName(attrs map[string]any) string {
	return stringAttr(mapAttr(attrs, "properties"), "nickname")
}

func (Kakao) ExtractProviderID(attrs map[string]any) string {
	// kakao ids are numeric, JSON decoding hands them over as float64
	if v, ok := attrs["id"]; ok {
		switch id := v.(type) {
		case string:
			return id
		case float64:
			return fmt.Sprintf("%.0f", id)
		default:
			return fmt.Sprint(id)
		}
	}
	return ""
}
