package terminal

import (
	prompt "github.com/c-bata/go-prompt"
)

type PromptSuggester = func(in prompt.Document) []prompt.Suggest

// prepareInputState prepares the input state and options, handling errors
// with exitFn.
func prepareInputState(exitFn func(error)) (o []prompt.Option, restore func()) {
	// BUG: https://github.com/c-bata/go-prompt/issues/233#issuecomment-1076162632
	if err := saveState(); err != nil {
		exitFn(err)
	}

	o = promptOptions()
	o = append(o, prompt.OptionAddKeyBind(quitKeybind(exitFn)))

	restore = func() {
		if err := restoreState(); err != nil {
			exitFn(err)
		}
	}

	return o, restore
}

// promptOptions generates default options for prompt.
func promptOptions() []prompt.Option {
	return []prompt.Option{
		prompt.OptionPrefixTextColor(prompt.Yellow),
		prompt.OptionInputTextColor(prompt.DefaultColor),
		prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
		prompt.OptionSuggestionBGColor(prompt.Black),
		prompt.OptionDescriptionBGColor(prompt.Black),
		prompt.OptionSuggestionTextColor(prompt.White),
		prompt.OptionDescriptionTextColor(prompt.White),
		prompt.OptionSelectedSuggestionTextColor(prompt.Color(prompt.DisplayBold)),
		prompt.OptionSelectedDescriptionTextColor(prompt.Color(prompt.DisplayBold)),
		prompt.OptionSelectedSuggestionBGColor(prompt.White),
		prompt.OptionSelectedDescriptionBGColor(prompt.White),
		prompt.OptionScrollbarBGColor(prompt.DefaultColor),
		prompt.OptionScrollbarThumbColor(prompt.LightGray),
	}
}

// completerPrefix suggests the items matching the word before the cursor.
func completerPrefix(items []string) PromptSuggester {
	sg := make([]prompt.Suggest, 0, len(items))
	for _, s := range items {
		sg = append(sg, prompt.Suggest{Text: s})
	}

	return func(in prompt.Document) []prompt.Suggest {
		return prompt.FilterHasPrefix(sg, in.GetWordBeforeCursor(), true)
	}
}

// quitKeybind returns the quitKeybind for the completer.
func quitKeybind(f func(err error)) prompt.KeyBind {
	return prompt.KeyBind{
		Key: prompt.ControlC,
		Fn: func(*prompt.Buffer) {
			if termState != nil {
				if err := restoreState(); err != nil {
					f(err)
				}
			}

			f(ErrActionAborted)
		},
	}
}
