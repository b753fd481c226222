package api

import (
	"fmt"
	"net/url"
	"strconv"
)

// ContactPage fetches one window of contact summaries by zero-based
// page index & page size.
func (c *Client) ContactPage(page, size int) (*Page, error) {
	result := Page{}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))

	err := c.Get("/contact", params, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// SearchContacts returns summaries matching a free-text query.
func (c *Client) SearchContacts(query string) ([]ContactSummary, error) {
	results := []ContactSummary{}

	params := url.Values{}
	params.Set("query", query)

	err := c.Get("/contact/s", params, &results)
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (c *Client) GetContact(id string) (*ContactDetail, error) {
	detail := ContactDetail{}

	err := c.Get(fmt.Sprintf("/contact/%v", id), nil, &detail)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

func (c *Client) CreateContact(contactRequest ContactRequest) (*ContactDetail, error) {
	detail := ContactDetail{}

	err := c.Post("/contact", contactRequest, &detail)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

func (c *Client) UpdateContact(id string, contactRequest ContactRequest) (*ContactDetail, error) {
	detail := ContactDetail{}

	err := c.Put(fmt.Sprintf("/contact/%v", id), contactRequest, &detail)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

func (c *Client) DeleteContact(id string) error {
	return c.Delete(fmt.Sprintf("/contact/%v", id))
}
