// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// ChoiceValidator accepts only the listed values.
func ChoiceValidator(choices []string) FlagValidatorType {
	return func(value any) error {
		for _, c := range choices {
			if c == value {
				return nil
			}
		}
		return fmt.Errorf("invalid choice %q: must be one of %v", value, choices)
	}
}
