package a

import clock "time"

func aliased() clock.Time {
	return clock.Now() // want `time.Now\(\) should be followed by .UTC\(\) for timezone consistency`
}
