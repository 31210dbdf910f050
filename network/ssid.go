package network

import "github.com/lexfrei/go-unipy/model"

// SSIDKind is a wireless network.
var SSIDKind = model.NewKind("SSID", nil,
	model.String("id").From("_id"),
	model.Bool("enabled").Default(false),
	model.String("name"),
	model.String("security"),
	model.String("wpa_mode"),
	model.String("wpa_enc"),
	model.String("passphrase").From("x_passphrase"),
)

// SSID is a wireless network.
type SSID struct {
	*model.Object
}

func (s *SSID) ID() string            { return s.String("id") }
func (s *SSID) Name() string          { return s.String("name") }
func (s *SSID) Enabled() bool         { return s.Bool("enabled") }
func (s *SSID) Security() string      { return s.String("security") }
func (s *SSID) WPAMode() string       { return s.String("wpa_mode") }
func (s *SSID) WPAEncryption() string { return s.String("wpa_enc") }
func (s *SSID) Passphrase() string    { return s.String("passphrase") }
