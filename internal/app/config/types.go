package config

type (
	InternalConfig struct {
		App  App
		FHIR AppFHIR
	}

	DriverConfig struct {
		Logger Logger
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Timezone                   string
		EndpointPrefix             string
		CorsAllowedOrigins         []string
		MaxRequests                int
		ShutdownTimeoutInSeconds   int
		RequestBodyLimitInMegabyte int
	}

	AppFHIR struct {
		BaseUrl                 string
		RequestTimeoutInSeconds int
		MaxRequestsPerSecond    float64
		// PageLinkOrigins lists extra scheme://host origins accepted for
		// pagination links, for servers that sit behind a proxy.
		PageLinkOrigins []string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
