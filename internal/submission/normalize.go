package submission

import (
	platformstrings "intake/pkg/platform/strings"
)

// Normalize trims name and email; age and gender pass through. Applying it
// twice yields the same value as applying it once.
func Normalize(data PersonalData) PersonalData {
	data.Name = platformstrings.TrimSpace(data.Name)
	data.Email = platformstrings.TrimSpace(data.Email)
	return data
}
