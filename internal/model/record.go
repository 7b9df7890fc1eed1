package model

import "encoding/json"

// StatRecord is one row of a stat-*.json export. Unknown fields in the
// source JSON are ignored.
type StatRecord struct {
	UserID    string
	GuildID   string
	GuildName string
	UserName  string
	Command   string // "" when the source record carried no command
	Count     int    // defaults to 1 when absent
	LastTime  *int64 // epoch millis; nil when absent
}

// UnmarshalJSON decodes a raw stat record, applying the documented
// defaults: count falls back to 1, name fields fall back to "".
// LastTime stays nil when absent so callers can distinguish a missing
// timestamp from an epoch-zero one.
func (r *StatRecord) UnmarshalJSON(data []byte) error {
	var aux struct {
		UserID    string `json:"userId"`
		GuildID   string `json:"guildId"`
		GuildName string `json:"guildName"`
		UserName  string `json:"userName"`
		Command   string `json:"command"`
		Count     *int   `json:"count"`
		LastTime  *int64 `json:"lastTime"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.UserID = aux.UserID
	r.GuildID = aux.GuildID
	r.GuildName = aux.GuildName
	r.UserName = aux.UserName
	r.Command = aux.Command
	r.Count = 1
	if aux.Count != nil {
		r.Count = *aux.Count
	}
	r.LastTime = aux.LastTime
	return nil
}
