package similarity

import "testing"

func TestAuthorMatchEmpty(t *testing.T) {
	if got := AuthorMatch(nil, nil); !almostEqual(got, 1.0) {
		t.Errorf("both empty = %f, want 1.0", got)
	}
	if got := AuthorMatch([]string{"John Smith"}, nil); !almostEqual(got, 0.0) {
		t.Errorf("one empty = %f, want 0.0", got)
	}
	if got := AuthorMatch(nil, []string{"John Smith"}); !almostEqual(got, 0.0) {
		t.Errorf("one empty = %f, want 0.0", got)
	}
}

func TestAuthorMatchIdentical(t *testing.T) {
	authors := []string{"John Smith", "Mary Jones", "Wei Zhang"}
	if got := AuthorMatch(authors, authors); !almostEqual(got, 1.0) {
		t.Errorf("identical lists = %f, want 1.0", got)
	}
}

func TestAuthorMatchPermutationInvariant(t *testing.T) {
	a := []string{"John Smith", "Mary Jones", "Wei Zhang"}
	perms := [][]string{
		{"Mary Jones", "Wei Zhang", "John Smith"},
		{"Wei Zhang", "John Smith", "Mary Jones"},
		{"John Smith", "Wei Zhang", "Mary Jones"},
	}
	want := AuthorMatch(a, a)
	for _, p := range perms {
		if got := AuthorMatch(a, p); !almostEqual(got, want) {
			t.Errorf("AuthorMatch(%v, %v) = %f, want %f", a, p, got, want)
		}
		if got := AuthorMatch(p, a); !almostEqual(got, want) {
			t.Errorf("AuthorMatch(%v, %v) = %f, want %f", p, a, got, want)
		}
	}
}

func TestAuthorMatchSharedSurnames(t *testing.T) {
	// Lists where several names share a surname are the hard case for
	// order-insensitivity: every name must pair with its own best
	// counterpart no matter where it sits in the list.
	a := []string{"Wei Zhang", "Lei Zhang"}
	b := []string{"Wei Zhang", "L. Zhang"}

	want := AuthorMatch(a, b)
	if got := AuthorMatch([]string{"Lei Zhang", "Wei Zhang"}, b); !almostEqual(got, want) {
		t.Errorf("reordering one list changed the score: %f vs %f", got, want)
	}
	if got := AuthorMatch(a, []string{"L. Zhang", "Wei Zhang"}); !almostEqual(got, want) {
		t.Errorf("reordering the other list changed the score: %f vs %f", got, want)
	}
	if got := AuthorMatch(b, a); !almostEqual(got, want) {
		t.Errorf("score not symmetric: %f vs %f", got, want)
	}
}

func TestAuthorMatchInitials(t *testing.T) {
	got := AuthorMatch([]string{"J. Smith"}, []string{"John Smith"})
	if got < surnameFloor {
		t.Errorf("initialed given name = %f, want >= %f", got, surnameFloor)
	}
	if almostEqual(got, 1.0) {
		t.Errorf("initialed given name = 1.0, want < 1.0 so the field is corrected")
	}
}

func TestAuthorMatchLastFirstConvention(t *testing.T) {
	got := AuthorMatch([]string{"Smith, John"}, []string{"John Smith"})
	if !almostEqual(got, 1.0) {
		t.Errorf(`"Smith, John" vs "John Smith" = %f, want 1.0`, got)
	}
}

func TestAuthorMatchDisjoint(t *testing.T) {
	got := AuthorMatch([]string{"John Smith"}, []string{"Alice Wu"})
	if got > 0.5 {
		t.Errorf("unrelated names = %f, want low score", got)
	}
}

func TestAuthorMatchLengthMismatch(t *testing.T) {
	// A missing co-author should not zero out the score: the single name
	// still pairs with its counterpart.
	got := AuthorMatch([]string{"John Smith"}, []string{"John Smith", "Mary Jones"})
	if !almostEqual(got, 1.0) {
		t.Errorf("subset list = %f, want 1.0", got)
	}
}
