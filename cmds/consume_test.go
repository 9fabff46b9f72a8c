package cmds

import "testing"

func TestConsume(t *testing.T) {
	executor := NewExecutor()
	var n int
	executor.Define("-n", Func(func(i int) {
		n = i
	}))
	executor.Define("-flag", Func(func() {
		n = -1
	}))

	rest, err := executor.Consume([]string{"-n", "42", "positional"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Fatalf("got %v", n)
	}
	if len(rest) != 1 || rest[0] != "positional" {
		t.Fatalf("got %v", rest)
	}

	rest, err = executor.Consume([]string{"-flag", "positional"})
	if err != nil {
		t.Fatal(err)
	}
	if n != -1 {
		t.Fatal()
	}
	if len(rest) != 1 || rest[0] != "positional" {
		t.Fatalf("got %v", rest)
	}

	if !executor.Has("-n") {
		t.Fatal()
	}
	if executor.Has("-missing") {
		t.Fatal()
	}

	_, err = executor.Consume([]string{"-missing"})
	if err == nil {
		t.Fatal("should error")
	}
}
