package cfg

type Cfg struct {
	// Storage
	DBPath       string
	FeedsDir     string
	ScenariosDir string

	// HTTP server
	Port         string
	BaseUrl      string
	APIAccessKey string
	RateLimit    float64
	RateBurst    int

	// Background processing
	WorkerCount       int
	SchedulerInterval int

	// Presentation
	Locale         string
	CurrencySymbol string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
