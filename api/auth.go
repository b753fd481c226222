package api

// Login exchanges a username/password for a bearer credential.
func (c *Client) Login(username, password string) (*LoginResponse, error) {
	loginResponse := LoginResponse{}

	err := c.Post("/auth/login", LoginRequest{Username: username, Password: password}, &loginResponse)
	if err != nil {
		return nil, err
	}

	return &loginResponse, nil
}

// Signup creates a new account. It does not log the account in.
func (c *Client) Signup(signupRequest SignupRequest) (*SignupResponse, error) {
	signupResponse := SignupResponse{}

	err := c.Post("/auth/signup", signupRequest, &signupResponse)
	if err != nil {
		return nil, err
	}

	return &signupResponse, nil
}
