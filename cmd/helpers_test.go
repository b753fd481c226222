package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/abbasza/contactctl/api"
	"github.com/abbasza/contactctl/apitest"
	"github.com/abbasza/contactctl/store"
	"github.com/abbasza/contactctl/validation"
	"github.com/go-playground/validator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type TestDataProvider []struct {
	description string
	args        []string
	input       string
	expectedOut string
}

// stubApp swaps the package-level app wiring for test doubles,
// and reverts to the previous wiring after the test is done.
func stubApp(t *testing.T) *apitest.Server {
	t.Helper()

	server, err := apitest.NewServer()
	if err != nil {
		t.Fatalf("failed to start fake API server: %v", err)
	}
	t.Cleanup(server.Close)

	savedConfig := config
	savedStore := appStore
	savedClient := apiClient
	savedValidate := validate
	t.Cleanup(func() {
		config = savedConfig
		appStore = savedStore
		apiClient = savedClient
		validate = savedValidate
	})

	config = viper.New()
	config.SetDefault("api.pageSize", 10)

	appStore, err = store.Open("test-passphrase", t.TempDir())
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	apiClient = api.NewClient(server.URL(), appStore.Token)

	validate = validator.New()
	if err := validation.RegisterValidators(validate); err != nil {
		t.Fatalf("failed to register validators: %v", err)
	}

	return server
}

// seedSession registers an account on the fake server & stores its
// token, as if the user had just logged in.
func seedSession(t *testing.T, server *apitest.Server, email, password string) (userID string) {
	t.Helper()

	userID, token, err := server.SeedUser(email, "", "Grace", "Hopper", password)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	if err := appStore.SetToken(token); err != nil {
		t.Fatalf("failed to store token: %v", err)
	}

	return userID
}

func runCommand(cmd *cobra.Command, input string, args ...string) string {
	buff := new(bytes.Buffer)

	cmd.SetOut(buff)
	cmd.SetErr(buff)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)

	cmd.Execute()

	return buff.String()
}

func assertContains(t *testing.T, actualOut, expectedOut string) {
	t.Helper()

	if !strings.Contains(actualOut, expectedOut) {
		t.Errorf("Expected: \n\"%s\" \nTo contain: \n\"%s\"", actualOut, expectedOut)
	}
}
