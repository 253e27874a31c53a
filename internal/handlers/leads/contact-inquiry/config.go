package contactinquiry

type Config struct {
	// ListEnabled serves GET /api/inquiries for reviewing the log.
	ListEnabled    bool
	SuccessMessage string
}

func DefaultConfig() *Config {
	return &Config{
		SuccessMessage: "Thank you! We'll be in touch within 24 hours.",
	}
}

func (c *Config) Validate() error {
	return nil
}
