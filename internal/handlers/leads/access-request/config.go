package accessrequest

type Config struct {
	ListEnabled    bool
	SuccessMessage string
}

func DefaultConfig() *Config {
	return &Config{
		SuccessMessage: "Access request received. We'll review it and get back to you within 24 hours.",
	}
}

func (c *Config) Validate() error {
	return nil
}
