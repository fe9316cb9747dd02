package advisory

import "fmt"

func reasonRise(changePct float64) string {
	return fmt.Sprintf("A supply shortage in nearby markets is expected to push prices up by %.1f%% within 24 hours. Holding your stock should fetch a better rate.", changePct)
}

func reasonDrop(changePct float64) string {
	return fmt.Sprintf("Oversupply from neighbouring districts is expected to drag prices down by %.1f%% within 24 hours. Selling now locks in the current rate.", -changePct)
}
