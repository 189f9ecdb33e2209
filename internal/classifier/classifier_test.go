package classifier

import (
	"encoding/json"
	"reflect"
	"sort"
	"sync"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func fixedClassifier() *Classifier {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func at(d time.Duration) *time.Time {
	t := fixedNow.Add(d)
	return &t
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func sorted(list []string) []string {
	out := append([]string(nil), list...)
	sort.Strings(out)
	return out
}

// TestClassify_Scenarios covers the end-to-end examples the product was specified with.
func TestClassify_Scenarios(t *testing.T) {
	c := fixedClassifier()

	t.Run("scheduling with urgent keyword", func(t *testing.T) {
		r := c.Classify("Schedule urgent meeting", "Need to arrange a call with the team tomorrow", nil)
		if r.Category != CategoryScheduling {
			t.Errorf("category = %s, want scheduling", r.Category)
		}
		if r.Priority != PriorityHigh {
			t.Errorf("priority = %s, want high", r.Priority)
		}
		if !contains(r.Entities.Dates, "tomorrow") {
			t.Errorf("dates %v missing tomorrow", r.Entities.Dates)
		}
	})

	t.Run("finance", func(t *testing.T) {
		r := c.Classify("Process invoice payment", "Pay the outstanding bill for Q4 budget", nil)
		if r.Category != CategoryFinance {
			t.Errorf("category = %s, want finance", r.Category)
		}
	})

	t.Run("due within a day", func(t *testing.T) {
		r := c.Classify("Complete report", "Regular task", at(12*time.Hour))
		if r.Priority != PriorityHigh {
			t.Errorf("priority = %s, want high", r.Priority)
		}
	})

	t.Run("due within a week", func(t *testing.T) {
		r := c.Classify("Regular task", "Normal work", at(5*24*time.Hour))
		if r.Priority != PriorityMedium {
			t.Errorf("priority = %s, want medium", r.Priority)
		}
	})

	t.Run("people", func(t *testing.T) {
		r := c.Classify("Meet with John", "Discuss budget with Sarah and assign to Mike", nil)
		for _, name := range []string{"John", "Sarah", "Mike"} {
			if !contains(r.Entities.People, name) {
				t.Errorf("people %v missing %s", r.Entities.People, name)
			}
		}
	})

	t.Run("nothing matches", func(t *testing.T) {
		r := c.Classify("Future enhancement", "Can be done later when possible", nil)
		if r.Priority != PriorityLow {
			t.Errorf("priority = %s, want low", r.Priority)
		}
		if r.Category != CategoryGeneral {
			t.Errorf("category = %s, want general", r.Category)
		}
		want := []string{"Review task details", "Gather required information", "Create action plan", "Track progress"}
		if !reflect.DeepEqual(r.SuggestedActions, want) {
			t.Errorf("actions = %v, want %v", r.SuggestedActions, want)
		}
	})
}

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Category
	}{
		{"technical", "fix critical bug system error needs urgent repair and debugging", CategoryTechnical},
		{"safety", "safety inspection needed conduct hazard assessment and compliance check", CategorySafety},
		{"general", "random task some general work to be done", CategoryGeneral},
		{"empty", "", CategoryGeneral},
		{"tie goes to earlier category", "invoice error", CategoryFinance},
		{"tie scheduling over safety", "meeting about risk", CategoryScheduling},
		{"substring without word boundary", "billing", CategoryFinance},
		{"higher score wins over order", "meeting bug error install", CategoryTechnical},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectCategory(tc.text); got != tc.want {
				t.Errorf("DetectCategory(%q) = %s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

func TestCategoryTable_Order(t *testing.T) {
	want := []Category{CategoryScheduling, CategoryFinance, CategoryTechnical, CategorySafety}
	var got []Category
	for _, row := range categoryTable {
		got = append(got, row.category)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("table order = %v, want %v (general is never scored)", got, want)
	}
}

func TestAssignPriority(t *testing.T) {
	tests := []struct {
		name string
		text string
		due  *time.Time
		want Priority
	}{
		{"high keyword beats distant due date", "urgent fix", at(30 * 24 * time.Hour), PriorityHigh},
		{"high keyword without due date", "critical issue that needs asap attention", nil, PriorityHigh},
		{"due in 12h", "regular task", at(12 * time.Hour), PriorityHigh},
		{"due exactly one day", "regular task", at(24 * time.Hour), PriorityHigh},
		{"overdue", "regular task", at(-48 * time.Hour), PriorityHigh},
		{"due in 5 days", "regular task", at(5 * 24 * time.Hour), PriorityMedium},
		{"due exactly seven days", "regular task", at(7 * 24 * time.Hour), PriorityMedium},
		{"medium keyword loses to due within a day", "important task", at(2 * time.Hour), PriorityHigh},
		{"medium keyword with distant due date", "important task", at(10 * 24 * time.Hour), PriorityMedium},
		{"distant due date alone", "regular task", at(10 * 24 * time.Hour), PriorityLow},
		{"this week phrase", "complete this week", nil, PriorityMedium},
		{"now as a substring", "known issue", nil, PriorityHigh},
		{"nothing", "can be done later", nil, PriorityLow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AssignPriority(tc.text, tc.due, fixedNow); got != tc.want {
				t.Errorf("AssignPriority(%q) = %s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

func TestExtractDates(t *testing.T) {
	got := ExtractDates("Meeting tomorrow Schedule for next week on Friday")
	for _, want := range []string{"tomorrow", "next week", "Friday"} {
		if !contains(got, want) {
			t.Errorf("dates %v missing %q", got, want)
		}
	}

	got = ExtractDates("Pay by 12/31/2024 or 1-5-25, reminder on Dec 31 and December 5")
	for _, want := range []string{"12/31/2024", "1-5-25", "Dec 31", "December 5"} {
		if !contains(got, want) {
			t.Errorf("dates %v missing %q", got, want)
		}
	}
}

func TestExtractDates_KeepsMatchedCasing(t *testing.T) {
	got := sorted(ExtractDates("Today and today and TODAY and today"))
	want := []string{"TODAY", "Today", "today"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dates = %v, want %v", got, want)
	}
}

func TestExtractDates_WordBoundaries(t *testing.T) {
	if got := ExtractDates("todayish sundays"); len(got) != 0 {
		t.Errorf("expected no dates, got %v", got)
	}
}

func TestExtractPeople(t *testing.T) {
	got := sorted(ExtractPeople("Review by Alice for Bob with Carol, then assign to Dave with Carol"))
	want := []string{"Alice", "Bob", "Carol", "Dave"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("people = %v, want %v", got, want)
	}
}

func TestExtractPeople_CaseSensitive(t *testing.T) {
	for _, text := range []string{"with JOHN", "with john", "With John"} {
		if got := ExtractPeople(text); len(got) != 0 {
			t.Errorf("ExtractPeople(%q) = %v, want none", text, got)
		}
	}
}

func TestExtractLocations_ASCIIRoomToken(t *testing.T) {
	if got := ExtractLocations("Meet in Office Å1"); contains(got, "Å1") {
		t.Errorf("room token should be ASCII word characters only, got %v", got)
	}
	if got := ExtractLocations("Meet at Building C4"); !contains(got, "C4") {
		t.Errorf("locations = %v, want C4", got)
	}
}

func TestExtractLocations(t *testing.T) {
	got := sorted(ExtractLocations("Inspect the boiler at Central Station and check Room 12B in the Warehouse"))
	want := []string{"12B", "Central Station", "Warehouse"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("locations = %v, want %v", got, want)
	}
}

func TestExtractActions(t *testing.T) {
	got := ExtractActions("Schedule and prepare Review the document and send to team")
	for _, want := range []string{"Schedule", "Prepare", "Review", "Document", "Send"} {
		if !contains(got, want) {
			t.Errorf("actions %v missing %q", got, want)
		}
	}
	if contains(got, "Fix") {
		t.Errorf("unexpected Fix in %v", got)
	}
}

func TestExtractActions_Deduplicated(t *testing.T) {
	got := ExtractActions("review REVIEW Review")
	if !reflect.DeepEqual(got, []string{"Review"}) {
		t.Errorf("actions = %v, want [Review]", got)
	}
}

func TestExtractEntities_NeverNil(t *testing.T) {
	for _, in := range [][2]string{{"Task", "Do work"}, {"", ""}} {
		e := ExtractEntities(in[0], in[1])
		if e.Dates == nil || e.People == nil || e.Locations == nil || e.Actions == nil {
			t.Fatalf("nil entity slice for %q: %+v", in, e)
		}

		b, err := json.Marshal(e)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		want := `{"dates":[],"people":[],"locations":[],"actions":[]}`
		if string(b) != want {
			t.Errorf("json = %s, want %s", b, want)
		}
	}
}

func TestSuggestActions(t *testing.T) {
	all := []Category{CategoryScheduling, CategoryFinance, CategoryTechnical, CategorySafety, CategoryGeneral}
	for _, c := range all {
		got := SuggestActions(c)
		if len(got) != 4 {
			t.Errorf("%s: %d actions, want 4", c, len(got))
		}
		got[0] = "mutated"
		if again := SuggestActions(c); again[0] == "mutated" {
			t.Errorf("%s: table was mutated through returned slice", c)
		}
	}

	sched := SuggestActions(CategoryScheduling)
	if !contains(sched, "Send meeting invite") {
		t.Errorf("scheduling actions = %v", sched)
	}
	if got := SuggestActions(Category("unknown")); !reflect.DeepEqual(got, SuggestActions(CategoryGeneral)) {
		t.Errorf("unknown category should fall back to general, got %v", got)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := fixedClassifier()
	first := c.Classify("Fix the billing system", "Check Room 4 with Anna at Head Office by Friday 3/4/26", at(3*24*time.Hour))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := c.Classify("Fix the billing system", "Check Room 4 with Anna at Head Office by Friday 3/4/26", at(3*24*time.Hour))
			if !reflect.DeepEqual(got, first) {
				t.Errorf("non-deterministic result: %+v vs %+v", got, first)
			}
		}()
	}
	wg.Wait()
}

func TestClassifyAt_UsesGivenTime(t *testing.T) {
	due := fixedNow.Add(3 * 24 * time.Hour)

	if got := ClassifyAt("Regular task", "Normal work", &due, fixedNow).Priority; got != PriorityMedium {
		t.Errorf("priority = %s, want medium", got)
	}
	later := fixedNow.Add(2*24*time.Hour + time.Hour)
	if got := ClassifyAt("Regular task", "Normal work", &due, later).Priority; got != PriorityHigh {
		t.Errorf("priority = %s, want high", got)
	}
}

func TestParseEnums(t *testing.T) {
	if c, ok := ParseCategory(" Finance "); !ok || c != CategoryFinance {
		t.Errorf("ParseCategory = %s, %v", c, ok)
	}
	if _, ok := ParseCategory("travel"); ok {
		t.Error("ParseCategory accepted unknown value")
	}
	if p, ok := ParsePriority("HIGH"); !ok || p != PriorityHigh {
		t.Errorf("ParsePriority = %s, %v", p, ok)
	}
	if PriorityHigh.Rank() <= PriorityMedium.Rank() || PriorityMedium.Rank() <= PriorityLow.Rank() {
		t.Error("rank order broken")
	}
}
