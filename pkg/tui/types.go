package tui

// FormResult holds all collected user input.
type FormResult struct {
	// OutputMode is "quiet" or "verbose"
	OutputMode string

	// Selections are selection strings ("category/subcategory/entry[:type]")
	Selections []string

	// Inputs holds free-text values keyed by entry key (e.g., set_hostname)
	Inputs map[string]string

	CustomScript string

	// ProfileName is set when the user asked to save the choices as a
	// profile.
	ProfileName string
}

// FormOptions configures the behavior of RunForm.
type FormOptions struct {
	// Initial preselects entries and inputs, e.g. from a profile.
	Initial *FormResult

	// SkipOutputMode skips the output mode question when it was given on
	// the command line.
	SkipOutputMode bool

	// SkipProfilePrompt hides the save-as-profile question, e.g. when the
	// name was given on the command line.
	SkipProfilePrompt bool
}

// DefaultCustomScript is the starting text of the custom script field.
const DefaultCustomScript = `echo "Created with ❤️ for Open Source"`
