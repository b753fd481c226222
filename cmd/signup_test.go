package cmd

import (
	"testing"
)

func TestSignupCmd(t *testing.T) {
	stubApp(t)

	cases := TestDataProvider{
		{
			description: "Should reject a username that is neither an email nor a phone",
			input:       "not-a-username\n",
			expectedOut: "username must be a valid email or phone number",
		},
		{
			description: "Should reject a weak password",
			input:       "grace@example.com\nGrace\nHopper\nabcdefgh\n",
			expectedOut: "password must be at least 8 characters",
		},
		{
			description: "Should create an account with an email username",
			input:       "grace@example.com\nGrace\nHopper\nAbcdef1!\n",
			expectedOut: "Account created for grace@example.com",
		},
		{
			description: "Should create an account with a phone username",
			input:       "+12345678901\nAda\nLovelace\nAbcdef1!\n",
			expectedOut: "Account created for +12345678901",
		},
		{
			description: "Should reject a username that is already taken",
			input:       "grace@example.com\nGrace\nHopper\nAbcdef1!\n",
			expectedOut: "an account with this username already exists",
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			actualOut := runCommand(createSignupCmd(), c.input)
			assertContains(t, actualOut, c.expectedOut)
		})
	}
}

func TestSignupRetryKeepsEnteredValues(t *testing.T) {
	server := stubApp(t)

	if _, _, err := server.SeedUser("grace@example.com", "", "Grace", "Hopper", "Abcdef1!"); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	// Taken username, retry with a new one, keep everything else(blank answers)
	input := "grace@example.com\nGrace\nHopper\nAbcdef1!\ny\ngrace@newhost.com\n\n\n\n"

	actualOut := runCommand(createSignupCmd(), input)
	assertContains(t, actualOut, "an account with this username already exists")
	assertContains(t, actualOut, "[Grace]")
	assertContains(t, actualOut, "Account created for grace@newhost.com")
}

func TestSignupDoesNotLogIn(t *testing.T) {
	stubApp(t)

	actualOut := runCommand(createSignupCmd(), "grace@example.com\nGrace\nHopper\nAbcdef1!\n")
	assertContains(t, actualOut, "Please log in with 'contactctl login'.")

	if appStore.IsAuthenticated() {
		t.Error("Expected signup to leave the user logged out")
	}
}

func TestSignupThenLoginRoundTrip(t *testing.T) {
	stubApp(t)

	runCommand(createSignupCmd(), "+12345678901\nAda\nLovelace\nAbcdef1!\n")

	actualOut := runCommand(createLoginCmd(), "+12345678901\nAbcdef1!\n")
	assertContains(t, actualOut, "Logged in.")
}
