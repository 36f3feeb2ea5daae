// Package config loads daemon configuration from TOML files and Lua
// binding scripts, compiles declarative action specs into executable
// action trees, and watches the config file for live reload.
package config
