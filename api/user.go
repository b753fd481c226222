package api

// GetUser fetches the account of the logged-in user.
func (c *Client) GetUser() (*UserResponse, error) {
	userResponse := UserResponse{}

	err := c.Get("/user", nil, &userResponse)
	if err != nil {
		return nil, err
	}

	return &userResponse, nil
}

// UpdateUser edits the account. A successful username change invalidates
// the session server-side - callers must clear the stored token after.
func (c *Client) UpdateUser(userRequest UserRequest) (*UserResponse, error) {
	userResponse := UserResponse{}

	err := c.Put("/user/edit", userRequest, &userResponse)
	if err != nil {
		return nil, err
	}

	return &userResponse, nil
}

// ChangePassword swaps the account password. Same session-invalidation
// post-condition as UpdateUser.
func (c *Client) ChangePassword(oldPassword, newPassword string) error {
	return c.Put("/user/change-password", ChangePassRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}, nil)
}

// DeleteUser destroys the account.
func (c *Client) DeleteUser() error {
	return c.Delete("/user")
}
