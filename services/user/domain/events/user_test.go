package events_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ghuser/lostfound/services/user/domain/events"
	"github.com/ghuser/lostfound/services/user/domain/models"
)

func TestUserRegisteredEvent_OmitsPasswordHash(t *testing.T) {
	u := models.NewUser("Ada", "ada@example.com", "$2a$10$secret-hash", models.RoleUser)
	data, err := json.Marshal(events.NewUserRegistered(u))
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if strings.Contains(string(data), "secret-hash") {
		t.Fatalf("payload leaks the password hash: %s", data)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}
	for _, field := range []string{"event_id", "version", "user_id", "email", "role", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestTopicUserRegistered_Value(t *testing.T) {
	if events.TopicUserRegistered != "user.registered" {
		t.Errorf("unexpected topic %q", events.TopicUserRegistered)
	}
}
