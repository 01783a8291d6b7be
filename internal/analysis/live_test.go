package analysis

import (
	"fmt"
	"sync"
	"testing"
)

func TestLiveLatestWins(t *testing.T) {
	var l Live
	if l.Current() != nil || l.Version() != 0 {
		t.Fatal("fresh Live must be empty")
	}
	s1 := l.Touch()
	m1 := Analyze("a : b ;")
	s2 := l.Touch()
	m2 := Analyze("a : c ;")

	if l.Publish(s1, m1) {
		t.Fatal("superseded analysis must not be published")
	}
	if !l.Publish(s2, m2) || l.Current() != m2 || l.Version() != s2 {
		t.Fatal("latest analysis must be published")
	}
	if l.Publish(s2, m1) {
		t.Fatal("the same sequence must not publish twice")
	}
}

func TestLiveUpdate(t *testing.T) {
	var l Live
	m, ok := l.Update("r : x ;")
	if !ok || l.Current() != m || m.RuleByName("r") == nil {
		t.Fatal("Update must publish when uncontended")
	}
}

func TestLiveConcurrentReaders(t *testing.T) {
	var l Live
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 20 {
				l.Update(fmt.Sprintf("r%d_%d : a | b ;", i, j))
			}
		}()
	}
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if m := l.Current(); m != nil {
					// модель всегда полная
					if len(m.Rules) != 1 || len(m.Rules[0].Alternatives()) != 2 {
						t.Errorf("incomplete model observed")
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	if l.Current() == nil {
		t.Fatal("some model must be published")
	}
}
