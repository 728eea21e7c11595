package assert

import "fmt"

func NotNil(value any) {
	if value == nil {
		panic("expected value to be not nil")
	}
}

func Positive(n int) {
	if n <= 0 {
		panic(fmt.Sprintf("expected a positive number, got %d", n))
	}
}
