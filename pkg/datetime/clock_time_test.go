package datetime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewClockTime(t *testing.T) {
	ct := NewClockTime(23, 59)
	assert.Equal(t, 23, ct.Hour)
	assert.Equal(t, 59, ct.Minute)

	ct.Hour = 99
	assert.Equal(t, ClockTime{Hour: 99, Minute: 59}, ct)
}

func TestNow(t *testing.T) {
	before := time.Now()
	ct := Now()
	after := time.Now()
	// The minute may roll over between reads.
	assert.Contains(t, []ClockTime{ClockTimeOf(before), ClockTimeOf(after)}, ct)
	assert.True(t, ct.IsValidStrict())
}

func TestClockTimeOf(t *testing.T) {
	ct := ClockTimeOf(time.Date(2024, 12, 25, 7, 5, 59, 0, time.UTC))
	assert.Equal(t, NewClockTime(7, 5), ct)
}

func TestParseClockTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  ClockTime
	}{
		{"23:59", NewClockTime(23, 59)},
		{"0:0", NewClockTime(0, 0)},
		{"08:05", NewClockTime(8, 5)},
		{"24:00", NewClockTime(24, 0)},
		{"10:60", NewClockTime(10, 60)},
		{"-1:30", NewClockTime(-1, 30)},
		{"100:-7", NewClockTime(100, -7)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClockTime(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			var ct ClockTime
			require.NoError(t, ct.Parse(tt.input))
			assert.Equal(t, tt.want, ct)
		})
	}
}

func TestClockTimeIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input      string
		want       bool
		wantStrict bool
		wantErr    error
	}{
		{"23:59", true, true, nil},
		{"0:00", true, true, nil},
		{"12:30", true, true, nil},
		{"24:00", false, false, ErrHourOutOfRange},
		{"10:60", false, false, ErrMinuteOutOfRange},
		{"24:60", false, false, ErrHourOutOfRange},
		// No lower bound check unless strict.
		{"-1:30", true, false, nil},
		{"10:-1", true, false, nil},
		{"-5:-5", true, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ct, err := ParseClockTime(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ct.IsValid())
			assert.Equal(t, tt.wantStrict, ct.IsValidStrict())

			err = ct.Validate(false)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	err := NewClockTime(-1, 30).Validate(true)
	assert.ErrorIs(t, err, ErrHourOutOfRange)
	err = NewClockTime(1, -30).Validate(true)
	assert.ErrorIs(t, err, ErrMinuteOutOfRange)
}

func TestClockTimeCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b ClockTime
		want int
	}{
		{"equal", NewClockTime(10, 30), NewClockTime(10, 30), 0},
		{"later hour", NewClockTime(11, 0), NewClockTime(10, 59), 1},
		{"earlier hour", NewClockTime(9, 59), NewClockTime(10, 0), -1},
		{"later minute", NewClockTime(10, 31), NewClockTime(10, 30), 1},
		{"earlier minute", NewClockTime(10, 29), NewClockTime(10, 30), -1},
		{"negative", NewClockTime(-1, 30), NewClockTime(0, 0), -1},
		{"invalid equal", NewClockTime(99, 99), NewClockTime(99, 99), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
			assert.Equal(t, tt.want == 0, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want < 0, tt.a.Before(tt.b))
			assert.Equal(t, tt.want > 0, tt.a.After(tt.b))
		})
	}
}

func TestClockTimeOrdering(t *testing.T) {
	t.Parallel()

	var times []ClockTime
	for h := 0; h < HoursPerDay; h += 5 {
		for m := 0; m < MinutesPerHour; m += 13 {
			times = append(times, NewClockTime(h, m))
		}
	}
	asDuration := func(ct ClockTime) time.Duration {
		return time.Duration(ct.Hour)*time.Hour + time.Duration(ct.Minute)*time.Minute
	}
	for _, a := range times {
		assert.True(t, a.Equal(a))
		for _, b := range times {
			want := 0
			switch {
			case asDuration(a) > asDuration(b):
				want = 1
			case asDuration(a) < asDuration(b):
				want = -1
			}
			assert.Equal(t, want, a.Compare(b), "%v %v", a, b)
		}
	}
}

func TestClockTimeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ct   ClockTime
		want string
	}{
		{NewClockTime(8, 5), "08:05"},
		{NewClockTime(0, 0), "00:00"},
		{NewClockTime(9, 9), "09:09"},
		{NewClockTime(10, 0), "10:00"},
		{NewClockTime(23, 59), "23:59"},
		{NewClockTime(24, 60), "24:60"},
		{NewClockTime(100, 7), "100:07"},
		{NewClockTime(-1, 30), "-1:30"},
		{NewClockTime(0, -5), "00:-5"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ct.String())
		})
	}
}

func TestClockTimeRoundTrip(t *testing.T) {
	t.Parallel()

	for h := 0; h < 30; h++ {
		for m := 0; m < 75; m++ {
			want := NewClockTime(h, m)
			got, err := ParseClockTime(want.String())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}
}

func TestClockTimeJSON(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		data, err := json.Marshal(NewClockTime(8, 5))
		require.NoError(t, err)
		assert.Equal(t, `"08:05"`, string(data))
	})

	t.Run("unmarshal field", func(t *testing.T) {
		var v struct {
			At ClockTime `json:"at"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"at":"23:59"}`), &v))
		assert.Equal(t, NewClockTime(23, 59), v.At)
	})

	t.Run("null value", func(t *testing.T) {
		ct := NewClockTime(1, 2)
		require.NoError(t, json.Unmarshal([]byte(`null`), &ct))
		assert.Equal(t, NewClockTime(1, 2), ct)
	})

	t.Run("malformed", func(t *testing.T) {
		var ct ClockTime
		err := json.Unmarshal([]byte(`"10:20:30"`), &ct)
		assert.ErrorIs(t, err, ErrSegmentCount)
	})
}

func TestClockTimeYAML(t *testing.T) {
	type doc struct {
		Times []ClockTime `yaml:"times"`
	}
	in := doc{Times: []ClockTime{NewClockTime(8, 5), NewClockTime(23, 59), NewClockTime(-1, 30)}}
	data, err := yaml.Marshal(in)
	require.NoError(t, err)

	var out doc
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	err = yaml.Unmarshal([]byte("times: [\"ten:20\"]\n"), &out)
	assert.ErrorIs(t, err, ErrNotInteger)

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("~"), &node))
	ct := NewClockTime(8, 5)
	require.NoError(t, ct.UnmarshalYAML(node.Content[0]))
	assert.Equal(t, NewClockTime(8, 5), ct)
}
