package docstore

import (
	"encoding/json"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFromBSONRendersHexID(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := bson.D{
		{Key: IDField, Value: oid},
		{Key: "name", Value: "Sharks"},
		{Key: "players", Value: bson.A{bson.D{{Key: "salary", Value: 12.5}}}},
	}

	raw, err := fromBSON(doc)
	if err != nil {
		t.Fatalf("fromBSON: %v", err)
	}

	var got testTeam
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
	if got.ID != oid.Hex() {
		t.Fatalf("id = %q, want %q", got.ID, oid.Hex())
	}
	if len(got.Players) != 1 || got.Players[0].Salary != 12.5 {
		t.Fatalf("players = %+v", got.Players)
	}
}

func TestToQuery(t *testing.T) {
	oid := primitive.NewObjectID()

	query, err := toQuery(ByID(oid.Hex()))
	if err != nil {
		t.Fatalf("toQuery: %v", err)
	}
	if query[0].Value != oid {
		t.Fatalf("query = %v, want ObjectID %s", query, oid.Hex())
	}

	query, err = toQuery(Eq("userName", "jdoe"))
	if err != nil {
		t.Fatalf("toQuery: %v", err)
	}
	if query[0].Key != "userName" || query[0].Value != "jdoe" {
		t.Fatalf("query = %v", query)
	}

	if _, err := toQuery(ByID("abc")); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("toQuery malformed id: err = %v, want ErrInvalidID", err)
	}
}

func TestToBSONDropsClientID(t *testing.T) {
	fields, err := toBSON([]byte(`{"_id":"abc","name":"Sharks"}`))
	if err != nil {
		t.Fatalf("toBSON: %v", err)
	}

	stripped := withoutID(fields)
	if len(stripped) != 1 || stripped[0].Key != "name" {
		t.Fatalf("withoutID = %v", stripped)
	}
}
