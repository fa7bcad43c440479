package availability

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// GenerateSlots returns slot start times from opening, stepping by shiftDuration,
// keeping only slots that end no later than cutoff
func GenerateSlots(opening, cutoff types.TimeString, shiftDuration int) []types.TimeString {
	if shiftDuration <= 0 || opening.Validate() != nil || cutoff.Validate() != nil {
		return nil
	}

	end := cutoff.Minutes()
	window := end - opening.Minutes()
	if window < shiftDuration {
		return []types.TimeString{}
	}
	slots := make([]types.TimeString, 0, window/shiftDuration)

	for start := opening.Minutes(); start+shiftDuration <= end; start += shiftDuration {
		slot, err := types.FromMinutes(start)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}

	return slots
}
