package basesvc

import "testing"

func TestNormalizePageLimit(t *testing.T) {
	cases := []struct {
		name      string
		page      int64
		limit     int64
		wantPage  int64
		wantLimit int64
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative page", -3, 25, 1, 25},
		{"negative limit", 2, -1, 2, 10},
		{"passthrough", 4, 50, 4, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := NormalizePageLimit(tc.page, tc.limit, 10)
			if page != tc.wantPage || limit != tc.wantLimit {
				t.Errorf("got (%d, %d), want (%d, %d)", page, limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int64
		want  int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{15, 10, 2},
		{100, 25, 4},
		{5, 0, 0},
	}

	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
