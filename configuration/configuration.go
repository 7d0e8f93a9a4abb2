package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	Dir               string `usage:"matrices directory (primary root)"`
	VaultDir          string `usage:"vault mount directory (secondary root), empty disables dual write"`
	AuditPath         string `usage:"vault trail log file"`
	AnchorPath        string `usage:"vault memory anchor file"`
	ApiKey            string `usage:"shared API key, compared against the X-Api-Key header"`
	EnableCompression bool   `usage:"gzip responses"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
}

func Default() Configuration {
	return Configuration{
		HttpAddr:   ":8080",
		Dir:        "matrices",
		VaultDir:   "vault",
		AuditPath:  "vault-trail.log",
		AnchorPath: "Vault_Memory_Anchor.json",
		ApiKey:     "cipher-secret",
		ShowBanner: true,
	}
}
