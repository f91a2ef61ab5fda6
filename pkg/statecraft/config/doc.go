/*
Package config loads statecraft settings and controller manifests.

# Settings

Settings are read from STATECRAFT_* environment variables:

	settings, err := config.LoadSettings()
	logger := settings.Logger(os.Stderr)

	STATECRAFT_LOG_LEVEL        debug | info | warn | error (default info)
	STATECRAFT_LOG_FORMAT       text | json (default text)
	STATECRAFT_METRICS_ENABLED  record OpenTelemetry metrics (default false)
	STATECRAFT_TRACING_ENABLED  record OpenTelemetry spans (default false)
	STATECRAFT_MANIFEST         path of a controller manifest

# Values

Values wraps a map[string]any and provides typed accessors that fall back to
a default when a key is missing or holds another type:

	v := config.NewValues(map[string]any{"secret": true})
	v.Bool("secret", false)        // true
	v.String("class", "take_off")  // "take_off"

# Manifests

A manifest declares the commands of one controller type in YAML or JSON:

	controller: FlightController
	commands:
	  - name: take off
	    class: take_off
	    aliases: [launch]
	    if: landed == true
	  - name: debug
	    class: debug
	    secret: true
	    metadata:
	      category: internal

Load one with LoadManifest or ParseManifest. Conditions stay as text here;
the controller compiles them.
*/
package config
