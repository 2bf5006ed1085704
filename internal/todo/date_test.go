package todo

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-07")
	if err != nil {
		t.Fatal(err)
	}
	if d.Year != 2025 || d.Month != time.March || d.Day != 7 {
		t.Fatalf("unexpected date %+v", d)
	}
	if d.String() != "2025-03-07" {
		t.Fatalf("String() = %q", d.String())
	}
	if _, err := ParseDate("07/03/2025"); err == nil {
		t.Fatal("expected error for bad layout")
	}
}

func TestDateCompare(t *testing.T) {
	a, _ := ParseDate("2025-01-31")
	b, _ := ParseDate("2025-02-01")
	if !a.Before(b) || b.Before(a) || a.Equal(b) {
		t.Fatal("ordering wrong")
	}
	if b.DaysUntil(a) != 1 || a.DaysUntil(b) != -1 {
		t.Fatalf("DaysUntil wrong: %d %d", b.DaysUntil(a), a.DaysUntil(b))
	}
}

func TestTaskJSONRoundTrip(t *testing.T) {
	completed := at("2025-01-15T07:00:00.123Z")
	in := []Task{
		{ID: "a", Title: "full", Description: "d", Completed: true, Priority: PriorityHigh, Category: "work",
			DueDate: due("2025-01-20"), CreatedAt: at("2025-01-15T06:00:00Z"), CompletedAt: &completed},
		{ID: "b", Title: "bare", Priority: PriorityLow, Category: "x", CreatedAt: at("2025-01-15T06:00:00Z")},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"description", "dueDate", "completedAt"} {
		if _, ok := raw[1][k]; ok {
			t.Fatalf("absent field %q should be omitted", k)
		}
	}
	if raw[0]["dueDate"] != "2025-01-20" {
		t.Fatalf("dueDate serialised as %v", raw[0]["dueDate"])
	}

	var out []Task
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out[0].Title != "full" || !out[0].DueDate.Equal(*in[0].DueDate) || !out[0].CompletedAt.Equal(completed) {
		t.Fatalf("round trip mismatch: %+v", out[0])
	}
	if out[1].DueDate != nil || out[1].CompletedAt != nil || out[1].Description != "" {
		t.Fatalf("absent fields should stay absent: %+v", out[1])
	}
}

func TestParseOriginalTimestampFormat(t *testing.T) {
	var task Task
	err := json.Unmarshal([]byte(`{"id":"x","title":"t","completed":false,"priority":"low","category":"work","createdAt":"2025-01-15T10:00:00.000Z"}`), &task)
	if err != nil {
		t.Fatal(err)
	}
	if task.CreatedAt.Hour() != 10 {
		t.Fatalf("unexpected createdAt %v", task.CreatedAt)
	}
}
