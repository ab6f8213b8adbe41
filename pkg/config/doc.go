// Package config loads modpick's configuration.
//
// Sources are layered, later ones winning: the built-in defaults, the user
// file ($XDG_CONFIG_HOME/modpick/config.toml or --config), MODPICK_*
// environment variables (a double underscore separates sections, as in
// MODPICK_OUTPUT__FORMAT) and finally command line overrides.
package config
