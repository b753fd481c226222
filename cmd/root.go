/*
Copyright © 2024 Abbas Zaidi

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/abbasza/contactctl/api"
	"github.com/abbasza/contactctl/colors"
	"github.com/abbasza/contactctl/store"
	"github.com/abbasza/contactctl/utils"
	"github.com/abbasza/contactctl/validation"
	"github.com/fatih/color"
	"github.com/go-playground/validator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	isDevEnv  bool
	isTestEnv bool

	config    *viper.Viper
	appStore  *store.Store
	apiClient *api.Client
	validate  *validator.Validate

	yellow       = color.New(color.FgYellow).SprintFunc()
	red          = color.New(color.FgRed).SprintFunc()
	green        = color.New(color.FgGreen).SprintFunc()
	warningLabel = yellow("Warning:")
)

var rootCmd = createRootCmd()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initApp)
}

func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "contactctl",
		Short: `contactctl is a terminal client for the Contact Manager API.

Log in(or sign up), then list, search, create, update & delete your
contacts, and manage your own account - all from the terminal.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.contactctl/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&isDevEnv, "dev", "", false, "run in development mode")
	cmd.PersistentFlags().BoolVarP(&isTestEnv, "test", "", false, "run in test mode")

	return cmd
}

// initApp wires config, state store & API client. Package vars already
// set(by a test) are left alone.
func initApp() {
	if config == nil {
		config = initConfig()
	}

	if appStore == nil {
		var err error
		appStore, err = store.Open(
			config.GetString("sqlite.passPhrase"),
			filepath.Dir(config.ConfigFileUsed()),
		)
		cobra.CheckErr(err)
	}

	// Apply the persisted theme before any output
	colors.Apply(appStore.Theme())

	if apiClient == nil {
		apiClient = api.NewClient(config.GetString("api.url"), appStore.Token)
	}

	if validate == nil {
		validate = validator.New()
		cobra.CheckErr(validation.RegisterValidators(validate))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() *viper.Viper {
	config := viper.New()

	if cfgFile != "" {
		// Use config file from the flag.
		config.SetConfigFile(cfgFile)
	} else {
		configDir, err := defaultConfigDir()
		cobra.CheckErr(err)

		// If config file is not found, create one using defaultConfigValue
		configFilePath := filepath.Join(configDir, "config.yaml")
		if !utils.FileExist(configFilePath) {
			err = ioutil.WriteFile(configFilePath, []byte(defaultConfigValue()), 0600)
			cobra.CheckErr(err)
		}

		config.AddConfigPath(configDir)
		config.SetConfigType("yaml")
		config.SetConfigName("config")
	}

	// The env var overrides whatever is in the config file
	config.BindEnv("api.url", "CONTACTCTL_API_URL")
	config.SetDefault("api.url", "http://localhost:8080")
	config.SetDefault("api.pageSize", 10)
	config.SetDefault("sqlite.passPhrase", "contactctl")

	config.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := config.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", config.ConfigFileUsed())
	}

	return config
}

func defaultConfigDir() (string, error) {
	// Use 'contactctl' folder in home directory for production
	configFolderName := ".contactctl"
	rootDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if isDevEnv || isTestEnv {
		configFolderName = "dev"
		rootDir, err = os.Getwd()
		if err != nil {
			return "", err
		}

		if isTestEnv {
			rootDir = filepath.Join(rootDir, "test-fixtures")
		}
	}

	configDir := filepath.Join(rootDir, configFolderName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return configDir, nil
}

// defaultConfigValue returns the default content for config.yaml
func defaultConfigValue() string {
	return `api:
  # Base URL of the Contact Manager API
  url: "http://localhost:8080"
  pageSize: 10

sqlite:
  # Passphrase protecting the local state database(session token & theme).
  # Change this to something private.
  passPhrase: "contactctl"
`
}

// ---------------------------------------------------------------------------------//
// Route guards
// --------------------------------------------------------------------------------//

// requireSession redirects unauthenticated users to the login command.
func requireSession(cmd *cobra.Command, args []string) error {
	if !appStore.IsAuthenticated() {
		return fmt.Errorf("you are not logged in, run 'contactctl login' first")
	}
	return nil
}

// requireAnonymous redirects logged-in users to the contacts view.
func requireAnonymous(cmd *cobra.Command, args []string) error {
	if appStore.IsAuthenticated() {
		return fmt.Errorf("you are already logged in, try 'contactctl contacts list'")
	}
	return nil
}

func formattedError(format string, a ...interface{}) error {
	return fmt.Errorf(red(format), a...)
}
