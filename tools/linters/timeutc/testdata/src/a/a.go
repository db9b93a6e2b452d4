package a

import "time"

type Todo struct {
	CreatedAt time.Time
}

func createdNow() Todo {
	return Todo{CreatedAt: time.Now()} // want `time.Now\(\) should be followed by .UTC\(\) for timezone consistency`
}

func createdNowUTC() Todo {
	return Todo{CreatedAt: time.Now().UTC().Truncate(time.Millisecond)}
}

func fromMillis(ms int64) Todo {
	return Todo{CreatedAt: time.UnixMilli(ms)} // want `time.UnixMilli\(\) should be followed by .UTC\(\) for timezone consistency`
}

func fromMillisUTC(ms int64) Todo {
	return Todo{CreatedAt: time.UnixMilli(ms).UTC()}
}

func elapsed(start time.Time) time.Duration {
	return time.Since(start)
}

func methodNamedNow() {
	var c fakeClock
	_ = c.Now()
}

type fakeClock struct{}

func (fakeClock) Now() time.Time { return time.Time{} }

func formattedLater() string {
	t := time.Now() // want `time.Now\(\) should be followed by .UTC\(\) for timezone consistency`
	return t.UTC().Format(time.RFC3339)
}

func nolintGeneral() {
	//nolint
	_ = time.Now()
}

func nolintSpecific() {
	_ = time.Unix(0, 0) //nolint:timeutc
}

func nolintList() {
	_ = time.Now() //nolint:errcheck,timeutc // test clock
}

func nolintOtherLinter() {
	_ = time.Now() //nolint:otherlinter // want `time.Now\(\) should be followed by .UTC\(\) for timezone consistency`
}
