// Package config loads runtime configuration for the answerbook client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, everything else as JSON.
//  3. Environment variables, optionally seeded from a .env file in the
//     working directory. Real environment variables win over .env entries.
//  4. Command-line flags.
//
// Supported flags
//
//	-d string   path to the SQLite database (":memory:" for a throwaway store)
//	-e string   directory that exports are written to
//	-s string   sort order kept after every change (name-asc, name-desc)
//	-l string   log level (debug, info, warn, error)
//
// Environment
//
//	ANSWERBOOK_DB, ANSWERBOOK_EXPORT_DIR, ANSWERBOOK_SORT,
//	ANSWERBOOK_LOG_LEVEL, ANSWERBOOK_LOG_FORMAT
//
// # File schema
//
//	{
//	  "db_path": "answerbook.db",
//	  "export_dir": "exports",
//	  "sort_order": "name-asc",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
