/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeControl(t *testing.T) {
	cases := []struct {
		in   string
		want TimeControl
		str  string
	}{
		{in: "inf", want: TimeControl{Infinite: true}, str: "inf"},
		{in: "st=2.5", want: TimeControl{TimePerMove: 2500 * time.Millisecond},
			str: "st=2.5"},
		{in: "40/60+0.5", want: TimeControl{MovesPerTc: 40, TimePerTc: time.Minute,
			Increment: 500 * time.Millisecond}, str: "40/60+0.5"},
		{in: "2:30+1", want: TimeControl{TimePerTc: 150 * time.Second,
			Increment: time.Second}, str: "150+1"},
		{in: "10", want: TimeControl{TimePerTc: 10 * time.Second}, str: "10"},
		{in: " 40/120 ", want: TimeControl{MovesPerTc: 40,
			TimePerTc: 2 * time.Minute}, str: "40/120"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			tc, err := ParseTimeControl(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, tc)
			assert.Equal(t, c.str, tc.String())
		})
	}

	for _, bad := range []string{"", "x/60", "40/", "60+", "st=", "st=-1",
		"1:xx", "-5", "NaN", "st=Inf", "40/+Inf", "60+nan", "1e300"} {

		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseTimeControl(bad)
			assert.Error(t, err)
		})
	}
}

func TestTimeControlJSON(t *testing.T) {
	tc := TimeControl{MovesPerTc: 40, TimePerTc: time.Minute,
		Increment: 250 * time.Millisecond, PlyLimit: 300}
	data, err := tc.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"movesPerTc": 40, "timePerTc": 60000, "increment": 250,
		"timePerMove": 0, "plyLimit": 300, "nodeLimit": 0, "expiryMargin": 0,
		"infinite": false}`, string(data))

	t.Run("unmarshal only overwrites present fields", func(t *testing.T) {
		loaded := tc
		require.NoError(t, loaded.UnmarshalJSON([]byte(`{"increment": 1000}`)))
		assert.Equal(t, time.Second, loaded.Increment)
		assert.Equal(t, 40, loaded.MovesPerTc)
		assert.Equal(t, time.Minute, loaded.TimePerTc)
		assert.Equal(t, 300, loaded.PlyLimit)
	})

	t.Run("out of range durations are rejected", func(t *testing.T) {
		for _, doc := range []string{
			`{"timePerTc": 9223372036854775807}`,
			`{"increment": 9300000000000}`,
			`{"timePerMove": -1}`,
			`{"plyLimit": 10, "expiryMargin": -5}`,
		} {
			loaded := tc
			assert.Error(t, loaded.UnmarshalJSON([]byte(doc)), doc)
			assert.Equal(t, tc, loaded, doc)
		}

		loaded := tc
		require.NoError(t, loaded.UnmarshalJSON([]byte(`{"timePerTc": 9223372036854}`)))
		assert.Equal(t, time.Duration(9223372036854)*time.Millisecond, loaded.TimePerTc)
	})
}
