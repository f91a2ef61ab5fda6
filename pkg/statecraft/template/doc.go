/*
Package template interpolates placeholders in command example text.

# Overview

Command examples are written once at declaration time and refer to the
command through a placeholder, so one Class can back several commands:

	out, _ := template.New().Render("$COMMAND north", template.Vars{"COMMAND": "go"})
	// out: "go north"

# Placeholders

Two forms are recognised:

  - ${NAME} - braced, required when the placeholder touches other word characters
  - $NAME - bare, the name runs to the first non-word character

A doubled dollar sign ($$) renders as a literal "$".

# Missing Placeholders

By default unknown placeholders are left in place. Interpolator options
change that:

	in := template.New(template.WithMissing(template.MissingError))
	_, err := in.Render("$COMMAND $TARGET", template.Vars{"COMMAND": "go"})
	// err: undefined placeholder: TARGET
*/
package template
