package conf

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/kaspa-auth/siwk/internal/utilities/kaspa"
)

const defaultNonceLength int = 16
const defaultVersion string = "1"

// LoggingConfig holds the logrus setup.
type LoggingConfig struct {
	Level  string            `json:"log_level" envconfig:"LEVEL"`
	File   string            `json:"log_file" envconfig:"FILE"`
	Fields map[string]string `json:"fields"`
}

// MessageConfiguration holds the defaults used when a field is not given
// on the command line or in a fields file. Network, when set, restricts
// built messages to addresses of that Kaspa network.
type MessageConfiguration struct {
	Domain        string        `json:"domain"`
	Scheme        string        `json:"scheme"`
	URI           string        `json:"uri"`
	NetworkID     string        `json:"network_id" envconfig:"NETWORK_ID"`
	Network       string        `json:"network"`
	Statement     string        `json:"statement"`
	Version       string        `json:"version"`
	Resources     []string      `json:"resources"`
	ExpiresIn     time.Duration `json:"expires_in" split_words:"true"`
	NonceLength   int           `json:"nonce_length" split_words:"true"`
	GenerateNonce bool          `json:"generate_nonce" split_words:"true" default:"true"`
}

func (c *MessageConfiguration) Validate() error {
	if c.NonceLength < 8 {
		return fmt.Errorf("conf: nonce length must be at least 8, got %d", c.NonceLength)
	}

	if c.ExpiresIn < 0 {
		return errors.New("conf: expires in must not be negative")
	}

	if c.Network != "" {
		if _, err := kaspa.ParseNetwork(c.Network); err != nil {
			return fmt.Errorf("conf: message network: %w", err)
		}
	}

	return nil
}

// GlobalConfiguration holds all the configuration that applies to the CLI.
type GlobalConfiguration struct {
	Logging LoggingConfig `envconfig:"LOG"`
	Message MessageConfiguration
}

func (c *GlobalConfiguration) ApplyDefaults() error {
	if c.Message.NonceLength == 0 {
		c.Message.NonceLength = defaultNonceLength
	}

	if c.Message.Version == "" {
		c.Message.Version = defaultVersion
	}

	if c.Message.URI == "" && c.Message.Domain != "" {
		scheme := c.Message.Scheme
		if scheme == "" {
			scheme = "https"
		}
		c.Message.URI = scheme + "://" + c.Message.Domain
	}

	return nil
}

func (c *GlobalConfiguration) Validate() error {
	validatables := []interface {
		Validate() error
	}{
		&c.Message,
	}

	for _, validatable := range validatables {
		if err := validatable.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func loadEnvironment(filename string) error {
	var err error
	if filename != "" {
		err = godotenv.Overload(filename)
	} else {
		err = godotenv.Load()
		// handle if .env file does not exist, this is OK
		if os.IsNotExist(err) {
			return nil
		}
	}
	return err
}

// LoadGlobal reads the environment, optionally overloaded by filename, into
// a validated GlobalConfiguration. Variables are prefixed with SIWK_.
func LoadGlobal(filename string) (*GlobalConfiguration, error) {
	if err := loadEnvironment(filename); err != nil {
		return nil, err
	}

	config := new(GlobalConfiguration)

	if err := envconfig.Process("siwk", config); err != nil {
		return nil, err
	}

	if err := config.ApplyDefaults(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
