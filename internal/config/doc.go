// Package config loads the optional uenv-venv configuration file.
//
// The file is plain YAML at $XDG_CONFIG_HOME/uenv-venv/config.yaml
// (overridable via UENV_VENV_CONFIG) and every field has a working
// default, so most installations never create it. Loading failures are
// soft: the caller warns and proceeds with defaults rather than
// refusing to run.
package config
