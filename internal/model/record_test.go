package model

import (
	"encoding/json"
	"testing"
)

func TestUnmarshalFullRecord(t *testing.T) {
	data := []byte(`{
		"userId": "42",
		"guildId": "1033929807",
		"guildName": "测试频道",
		"userName": "Alice",
		"command": "roll",
		"count": 3,
		"lastTime": 1700000000000
	}`)

	var r StatRecord
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if r.UserID != "42" || r.GuildID != "1033929807" {
		t.Errorf("ids = %q/%q", r.UserID, r.GuildID)
	}
	if r.GuildName != "测试频道" || r.UserName != "Alice" {
		t.Errorf("names = %q/%q", r.GuildName, r.UserName)
	}
	if r.Command != "roll" {
		t.Errorf("command = %q, want roll", r.Command)
	}
	if r.Count != 3 {
		t.Errorf("count = %d, want 3", r.Count)
	}
	if r.LastTime == nil || *r.LastTime != 1700000000000 {
		t.Errorf("lastTime = %v, want 1700000000000", r.LastTime)
	}
}

func TestUnmarshalDefaults(t *testing.T) {
	data := []byte(`{"userId": "42", "guildId": "100"}`)

	var r StatRecord
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if r.Count != 1 {
		t.Errorf("count = %d, want default 1", r.Count)
	}
	if r.Command != "" {
		t.Errorf("command = %q, want empty", r.Command)
	}
	if r.GuildName != "" || r.UserName != "" {
		t.Errorf("names = %q/%q, want empty", r.GuildName, r.UserName)
	}
	if r.LastTime != nil {
		t.Errorf("lastTime = %v, want nil", r.LastTime)
	}
}

func TestUnmarshalCountZeroIsNotDefaulted(t *testing.T) {
	data := []byte(`{"userId": "42", "guildId": "100", "count": 0}`)

	var r StatRecord
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if r.Count != 0 {
		t.Errorf("count = %d, want explicit 0", r.Count)
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	data := []byte(`{"userId": "42", "guildId": "100", "firstTime": 1, "extra": {"a": 1}}`)

	var r StatRecord
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if r.UserID != "42" {
		t.Errorf("userId = %q, want 42", r.UserID)
	}
}

func TestUnmarshalRecordArray(t *testing.T) {
	data := []byte(`[{"userId": "1", "guildId": "100"}, {"userId": "2", "guildId": "200", "count": 5}]`)

	var records []StatRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Count != 1 || records[1].Count != 5 {
		t.Errorf("counts = %d/%d, want 1/5", records[0].Count, records[1].Count)
	}
}
