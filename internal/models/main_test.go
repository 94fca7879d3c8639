package models

import (
	"encoding/json"
	"testing"
)

func TestPostUnmarshalFillsDefaults(t *testing.T) {
	var p Post
	if err := json.Unmarshal([]byte(`{"id":5,"title":"Sách"}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.UserName != DefaultUserName {
		t.Errorf("UserName = %q; want %q", p.UserName, DefaultUserName)
	}
	if p.Time != DefaultPostTime {
		t.Errorf("Time = %q; want %q", p.Time, DefaultPostTime)
	}
	if p.Tags == nil || p.Info == nil || p.Images == nil {
		t.Error("nil slices not replaced with empty ones")
	}
}

func TestPostUnmarshalKeepsProvidedFields(t *testing.T) {
	raw := `{
		"id": 5,
		"userId": 2,
		"userName": "Trần Thị B",
		"title": "Sách",
		"time": "Đăng 14h trước",
		"tags": ["Trao đổi"]
	}`
	var p Post
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatal(err)
	}
	if p.UserName != "Trần Thị B" {
		t.Errorf("UserName = %q; want provided value", p.UserName)
	}
	if p.Time != "Đăng 14h trước" {
		t.Errorf("Time = %q; want provided value", p.Time)
	}
	if len(p.Tags) != 1 || p.Tags[0] != "Trao đổi" {
		t.Errorf("Tags = %v; want [Trao đổi]", p.Tags)
	}
}

func TestProfileComplete(t *testing.T) {
	full := User{
		Name:       "Kevin",
		Username:   "kevin",
		Phone:      "0901234567",
		University: "HCMUT",
		Address:    "Quận 10",
	}
	if !full.ProfileComplete() {
		t.Error("ProfileComplete = false for a filled profile")
	}

	for _, clear := range []func(*User){
		func(u *User) { u.Name = "" },
		func(u *User) { u.Username = "" },
		func(u *User) { u.Phone = "" },
		func(u *User) { u.University = "" },
		func(u *User) { u.Address = "" },
	} {
		u := full
		clear(&u)
		if u.ProfileComplete() {
			t.Errorf("ProfileComplete = true with a missing field: %+v", u)
		}
	}
}
