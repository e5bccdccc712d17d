package catalog

import (
	"reflect"
	"testing"
)

func TestPageNumbers_SinglePage_Nil(t *testing.T) {
	if got := PageNumbers(1, 1); got != nil {
		t.Errorf("got %v, want nil", got)
	}
	if got := PageNumbers(1, 0); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestPageNumbers_FivePagesOrFewer_AllListed(t *testing.T) {
	if got, want := PageNumbers(2, 5), []int{1, 2, 3, 4, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := PageNumbers(1, 2), []int{1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPageNumbers_MiddleOfManyPages(t *testing.T) {
	got := PageNumbers(5, 10)
	want := []int{1, Ellipsis, 4, 5, 6, Ellipsis, 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPageNumbers_NearStart_NoLeadingGap(t *testing.T) {
	got := PageNumbers(2, 10)
	want := []int{1, 2, 3, Ellipsis, 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPageNumbers_NearEnd_NoTrailingGap(t *testing.T) {
	got := PageNumbers(9, 10)
	want := []int{1, Ellipsis, 8, 9, 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPageNumbers_FirstAndLastAlwaysPresent(t *testing.T) {
	for current := 1; current <= 20; current++ {
		got := PageNumbers(current, 20)
		if got[0] != 1 {
			t.Fatalf("current=%d: first cell = %d, want 1", current, got[0])
		}
		if got[len(got)-1] != 20 {
			t.Fatalf("current=%d: last cell = %d, want 20", current, got[len(got)-1])
		}
	}
}

func TestPageNumbers_ClampsOutOfRangeCurrent(t *testing.T) {
	got := PageNumbers(99, 10)
	want := []int{1, Ellipsis, 9, 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	got = PageNumbers(-3, 10)
	want = []int{1, 2, Ellipsis, 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
