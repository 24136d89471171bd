package domain

// Settings holds the network endpoints and switches the wallet engine is
// configured with. An empty string means the value is intentionally unset.
type Settings struct {
	Network              string `json:"network"`
	Proxy                string `json:"proxy"`
	Esplora              string `json:"esplora"`
	Rgs                  string `json:"rgs"`
	Lsp                  string `json:"lsp"`
	LspsConnectionString string `json:"lsps_connection_string"`
	LspsToken            string `json:"lsps_token"`
	Auth                 string `json:"auth"`
	Subscriptions        string `json:"subscriptions"`
	Storage              string `json:"storage"`
	Scorer               string `json:"scorer"`
	PrimalApi            string `json:"primal_api"`
	BlindAuth            string `json:"blind_auth"`
	Hermes               string `json:"hermes"`
	Selfhosted           string `json:"selfhosted"`
}

// SettingsKeys lists the persisted setting names in a stable order.
var SettingsKeys = []string{
	"network", "proxy", "esplora", "rgs", "lsp", "lsps_connection_string",
	"lsps_token", "auth", "subscriptions", "storage", "scorer", "primal_api",
	"blind_auth", "hermes", "selfhosted",
}

// Get returns the value of the setting with the given name.
func (s Settings) Get(key string) string {
	if p := s.field(key); p != nil {
		return *p
	}
	return ""
}

// With returns a copy of the settings with the given key set to value.
// Unknown keys are ignored.
func (s Settings) With(key, value string) Settings {
	if p := s.field(key); p != nil {
		*p = value
	}
	return s
}

// IsSelfhosted returns whether endpoints are relative to the serving origin.
func (s Settings) IsSelfhosted() bool {
	return s.Selfhosted == "true"
}

func (s *Settings) field(key string) *string {
	switch key {
	case "network":
		return &s.Network
	case "proxy":
		return &s.Proxy
	case "esplora":
		return &s.Esplora
	case "rgs":
		return &s.Rgs
	case "lsp":
		return &s.Lsp
	case "lsps_connection_string":
		return &s.LspsConnectionString
	case "lsps_token":
		return &s.LspsToken
	case "auth":
		return &s.Auth
	case "subscriptions":
		return &s.Subscriptions
	case "storage":
		return &s.Storage
	case "scorer":
		return &s.Scorer
	case "primal_api":
		return &s.PrimalApi
	case "blind_auth":
		return &s.BlindAuth
	case "hermes":
		return &s.Hermes
	case "selfhosted":
		return &s.Selfhosted
	}
	return nil
}
