package store

import (
	"context"
	"testing"
)

type record struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func TestReadAll(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	t.Run("Missing_Key_Yields_Empty_Slice", func(t *testing.T) {
		items := ReadAll[record](ctx, s, "missing")
		if items == nil {
			t.Fatal("Expected non-nil slice for missing key")
		}
		if len(items) != 0 {
			t.Fatalf("Expected 0 items, got %d", len(items))
		}
	})

	t.Run("Corrupt_Blob_Yields_Empty_Slice", func(t *testing.T) {
		if err := s.Write(ctx, "corrupt", []byte("{not json")); err != nil {
			t.Fatalf("Failed to write: %v", err)
		}
		items := ReadAll[record](ctx, s, "corrupt")
		if len(items) != 0 {
			t.Fatalf("Expected 0 items from corrupt blob, got %d", len(items))
		}
	})

	t.Run("Round_Trip", func(t *testing.T) {
		in := []record{{ID: "a", Value: 1}, {ID: "b", Value: 2}}
		if err := WriteAll(ctx, s, "records", in); err != nil {
			t.Fatalf("Failed to write: %v", err)
		}

		out := ReadAll[record](ctx, s, "records")
		if len(out) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(out))
		}
		if out[0].ID != "a" || out[1].Value != 2 {
			t.Errorf("Round trip mismatch: %+v", out)
		}
	})

	t.Run("Write_Replaces_Whole_Collection", func(t *testing.T) {
		if err := WriteAll(ctx, s, "records", []record{{ID: "c", Value: 3}}); err != nil {
			t.Fatalf("Failed to write: %v", err)
		}

		out := ReadAll[record](ctx, s, "records")
		if len(out) != 1 || out[0].ID != "c" {
			t.Fatalf("Expected only replacement item, got %+v", out)
		}
	})

	t.Run("Nil_Slice_Persists_As_Empty", func(t *testing.T) {
		if err := WriteAll[record](ctx, s, "empty", nil); err != nil {
			t.Fatalf("Failed to write: %v", err)
		}
		raw, err := s.Read(ctx, "empty")
		if err != nil {
			t.Fatalf("Failed to read: %v", err)
		}
		if string(raw) != "[]" {
			t.Errorf("Expected empty JSON array, got %s", raw)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	t.Run("Read_Missing_Returns_Sentinel", func(t *testing.T) {
		if _, err := s.Read(ctx, "nope"); err != ErrCollectionNotFound {
			t.Fatalf("Expected ErrCollectionNotFound, got %v", err)
		}
	})

	t.Run("Delete_Missing_Is_Not_An_Error", func(t *testing.T) {
		if err := s.Delete(ctx, "nope"); err != nil {
			t.Fatalf("Expected nil, got %v", err)
		}
	})

	t.Run("Keys_Filters_By_Prefix", func(t *testing.T) {
		s.Write(ctx, "quiz_math_basic", []byte("[]"))
		s.Write(ctx, "quiz_math_full", []byte("[]"))
		s.Write(ctx, "users", []byte("[]"))

		keys, err := s.Keys(ctx, "quiz_")
		if err != nil {
			t.Fatalf("Keys failed: %v", err)
		}
		if len(keys) != 2 {
			t.Fatalf("Expected 2 quiz keys, got %d: %v", len(keys), keys)
		}
	})

	t.Run("Read_Returns_Copy", func(t *testing.T) {
		s.Write(ctx, "mutate", []byte(`[{"id":"x"}]`))
		raw, _ := s.Read(ctx, "mutate")
		raw[0] = '!'

		again, _ := s.Read(ctx, "mutate")
		if again[0] != '[' {
			t.Error("Store blob was mutated through returned slice")
		}
	})
}

func TestKeys(t *testing.T) {
	if got := QuizKey("math", "basic"); got != "quiz_math_basic" {
		t.Errorf("QuizKey = %s", got)
	}
	if got := ClassroomStudentsKey("c1"); got != "classroom_students_c1" {
		t.Errorf("ClassroomStudentsKey = %s", got)
	}
	if got := EnrolledCoursesKey("u1"); got != "enrolled_courses_u1" {
		t.Errorf("EnrolledCoursesKey = %s", got)
	}
	if got := EnrolledCoursesKey(""); got != "enrolled_courses_guest" {
		t.Errorf("EnrolledCoursesKey guest fallback = %s", got)
	}
}
