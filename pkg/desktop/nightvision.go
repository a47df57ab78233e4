package desktop

// ToggleNightVision steps the night vision gain, wrapping to off after
// the configured maximum, and reports the new state through the alerter.
// It returns the new gain.
func (d *Desktop) ToggleNightVision() int {
	var next int32
	for {
		cur := d.nvGain.Load()
		next = cur + 1
		if next > d.nvMax {
			next = 0
		}
		if d.nvGain.CompareAndSwap(cur, next) {
			break
		}
	}

	if d.alerts != nil {
		switch next {
		case 0:
			d.alerts.Alert(AlertInfo, "NV Disabled")
		case 1:
			d.alerts.Alert(AlertInfo, "NV Enabled")
		default:
			d.alerts.Alert(AlertInfo, "NV Gain + %d", next-1)
		}
	}
	return int(next)
}

// NightVisionGain returns the current gain; 0 means disabled.
func (d *Desktop) NightVisionGain() int {
	return int(d.nvGain.Load())
}

// NightVisionMax returns the upper bound of the gain cycle.
func (d *Desktop) NightVisionMax() int {
	return int(d.nvMax)
}
