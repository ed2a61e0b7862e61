package app

import (
	"os"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"

	"github.com/karolwisniewski/strumienie-03/internal/notify"
)

// Config holds the complete application configuration, loadable from
// environment variables (ORDERS_ prefix), flags, or YAML config files.
type Config struct {
	DataFile  string       `yaml:"data_file" default:"orders.json" usage:"Orders dataset, plain or gzip-compressed JSON" flag:"data-file"`
	OutputDir string       `yaml:"output_dir" default:"." usage:"Directory for saved customer lists" flag:"output-dir"`
	Notify    NotifyConfig `yaml:"notify"`
	SMTP      SMTPConfig   `yaml:"smtp"`
}

// NotifyConfig controls the product summary broadcast.
type NotifyConfig struct {
	Subject     string `yaml:"subject" default:"Products List" usage:"Subject of product summary messages"`
	Concurrency int    `yaml:"concurrency" default:"4" usage:"Maximum deliveries in flight"`
}

// SMTPConfig holds the relay settings. An empty Host disables delivery and
// messages are only logged.
type SMTPConfig struct {
	Host     string `yaml:"host" default:"" usage:"SMTP relay host"`
	Port     int    `yaml:"port" default:"587" usage:"SMTP relay port"`
	Username string `yaml:"username" default:"" usage:"SMTP username, enables PLAIN auth"`
	Password string `yaml:"password" default:"" usage:"SMTP password"`
	From     string `yaml:"from" default:"" usage:"Sender address"`
	TLS      string `yaml:"tls" default:"mandatory" usage:"TLS policy: mandatory, opportunistic or none"`
}

// Sender returns the notify configuration for the relay.
func (c SMTPConfig) Sender() notify.SMTPConfig {
	return notify.SMTPConfig{
		Host:     c.Host,
		Port:     c.Port,
		Username: c.Username,
		Password: c.Password,
		From:     c.From,
		TLS:      c.TLS,
	}
}

// LoadConfig loads configuration from environment variables, YAML config
// files and command line flags.
func LoadConfig() (*Config, error) {
	return loadConfig(os.Args[1:])
}

func loadConfig(args []string) (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "ORDERS",
		Files:     []string{"config.yaml", "/etc/orders/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
		Args: args,
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DataFile == "" {
		return errors.New("data file is required: set ORDERS_DATA_FILE or --data-file")
	}
	if c.Notify.Concurrency < 1 {
		return errors.Errorf("notify concurrency must be positive, got %d", c.Notify.Concurrency)
	}
	if c.SMTP.Host != "" && c.SMTP.From == "" {
		return errors.New("sender address is required when an SMTP host is set: set ORDERS_SMTP_FROM")
	}
	return nil
}
