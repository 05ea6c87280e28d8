package config

import "time"

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(projectID, location, model string, temperature float64) *Gemini {
	return &Gemini{
		projectID:   projectID,
		location:    location,
		model:       model,
		temperature: temperature,
	}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channel string, interval time.Duration, top int) *Slack {
	return &Slack{
		botToken:       botToken,
		digestChannel:  channel,
		digestInterval: interval,
		digestTop:      top,
	}
}

// NewGeneratorForTest creates a Generator config for testing purposes
func NewGeneratorForTest(url string, timeout time.Duration) *Generator {
	return &Generator{
		url:     url,
		timeout: timeout,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, seedFile string) *Repository {
	return &Repository{
		backend:   backend,
		projectID: projectID,
		seedFile:  seedFile,
	}
}

// NewAppForTest creates an App config for testing purposes
func NewAppForTest(path string) *App {
	return &App{path: path}
}
