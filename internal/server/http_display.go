package server

import "fmt"

// displayServerInfo prints startup information to the console
func (s *Server) displayServerInfo() {
	addr := s.Host + ":" + s.Port

	fmt.Println("Resumelift API Server")
	fmt.Printf("Version:  %s\n", s.Version)
	fmt.Printf("Address:  http://%s\n", addr)
	fmt.Println()
	fmt.Println("Endpoints:")
	fmt.Printf("  POST http://%s/api/v1/parse     - Parse resume text into a structured record\n", addr)
	fmt.Printf("  POST http://%s/api/v1/score     - Score a resume against a job description\n", addr)
	fmt.Printf("  POST http://%s/api/v1/optimize  - Iteratively optimize a resume for a job\n", addr)
	fmt.Printf("  POST http://%s/api/v1/suggest   - Get advisory resume suggestions\n", addr)
	fmt.Printf("  GET  http://%s/health           - Health check\n", addr)
	fmt.Printf("  GET  http://%s/stats            - Runtime statistics\n", addr)
	fmt.Println()

	if len(s.APIKeys) > 0 {
		fmt.Printf("Authentication: enabled (%d API keys)\n", len(s.APIKeys))
	} else {
		fmt.Println("Authentication: disabled (no API keys configured)")
	}

	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting:  %d req/min (burst %d)\n", s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
	} else {
		fmt.Println("Rate limiting:  disabled")
	}

	if s.MaxRequestSize > 0 {
		fmt.Printf("Max request:    %d bytes\n", s.MaxRequestSize)
	}

	if s.PromptWatcher != nil && s.PromptWatcher.IsRunning() {
		fmt.Printf("Prompt reload:  watching %d files\n", len(s.PromptWatcher.GetWatchedFiles()))
	}

	if s.AppConfig.Observability.Prometheus.Enabled {
		fmt.Printf("Metrics:        http://localhost:%s%s\n",
			s.AppConfig.Observability.Prometheus.Port,
			s.AppConfig.Observability.Prometheus.Endpoint)
	}

	fmt.Println()
	fmt.Println("Press Ctrl+C to stop the server")
	fmt.Println()
}
