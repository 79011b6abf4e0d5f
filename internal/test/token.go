package test

// TokenParserStub resolves every token to the configured identifier.
type TokenParserStub struct {
	ID  int64
	Err error
}

// ParseToken returns configured id or error.
func (s TokenParserStub) ParseToken(token string) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.ID, nil
}
