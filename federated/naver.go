package federated

// Naver wraps every profile attribute in a response object:
//
//	{"resultcode": "00", "response": {"id": "...", "email": "...", "name": "..."}}
type Naver struct{}

var _ Provider = Naver{}

func (Naver) Name() string {
	return "naver"
}

func (Naver) ExtractEmail(attrs map[string]any) (string, error) {
	email := stringAttr(mapAttr(attrs, "response"), "email")
	if email == "" {
		return "", ErrMissingEmail
	}
	return email, nil
}

func (Naver) ExtractDisplayName(attrs map[string]any) string {
	return stringAttr(mapAttr(attrs, "response"), "name")
}

func (Naver) ExtractProviderID(attrs map[string]any) string {
	return stringAttr(mapAttr(attrs, "response"), "id")
}
