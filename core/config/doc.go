// Package config loads reactagent settings from the environment, an optional
// .env file, and an optional config file.
//
// Precedence, highest first: real environment variables, the nearest .env
// file found walking up from the working directory, the config file, and the
// built-in defaults. The .env file never overrides a variable that is already
// set.
//
//	cfg, err := config.Load()
//	if errors.Is(err, config.ErrConfiguration) {
//	    // OPENAI_API_KEY missing or a setting out of range
//	}
package config
