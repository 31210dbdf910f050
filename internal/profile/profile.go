package profile

import (
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/lexfrei/go-unipy/connection"
)

// Profile is one configured controller authentication.
type Profile struct {
	Name               string `mapstructure:"name" validate:"required"`
	Server             string `mapstructure:"server" validate:"required"`
	Username           string `mapstructure:"username" validate:"required_without=APIKey"`
	Password           string `mapstructure:"password"`
	APIKey             string `mapstructure:"api_key"`
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify"`
	Site               string `mapstructure:"site"`
}

// AuthMethod describes how the profile authenticates without revealing secrets.
func (p *Profile) AuthMethod() string {
	if p.APIKey != "" {
		return "api-key"
	}

	return "password (" + p.Username + ")"
}

// SiteName returns the configured site, or "default".
func (p *Profile) SiteName() string {
	if p.Site == "" {
		return "default"
	}

	return p.Site
}

// ConnectionConfig returns the connection configuration of the profile.
func (p *Profile) ConnectionConfig() *connection.Config {
	return &connection.Config{
		Server:             p.Server,
		Username:           p.Username,
		Password:           p.Password,
		APIKey:             p.APIKey,
		InsecureSkipVerify: p.InsecureSkipVerify,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the profiles file at path. A missing file yields no profiles.
//
// The file looks like:
//
//	profiles:
//	  - name: home
//	    server: 192.168.1.1
//	    username: admin
//	    password: secret
//	    insecure_skip_verify: true
//	  - name: office
//	    server: https://unifi.example.com
//	    api_key: abc123
//	    site: k3x9z2w1
func Load(path string) ([]Profile, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading profiles from %s", path)
	}

	var profiles []Profile
	if err := v.UnmarshalKey("profiles", &profiles); err != nil {
		return nil, errors.Wrapf(err, "decoding profiles from %s", path)
	}

	seen := make(map[string]bool, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		if err := validate.Struct(p); err != nil {
			return nil, errors.Wrapf(err, "profile #%d (%q)", i+1, p.Name)
		}
		if seen[p.Name] {
			return nil, errors.Newf("duplicate profile %q", p.Name)
		}
		seen[p.Name] = true
	}

	return profiles, nil
}
