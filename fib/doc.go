// Package fib provides Fibonacci strategies with very different cost
// profiles for timing comparisons.
//
// Recursive evaluates fib(n-1) + fib(n-2) literally and is exponential in n.
// Memoized caches every value it computes, and Iterative walks the sequence
// once. All three return the same values:
//
//	for _, s := range fib.All() {
//	    v, _ := s.Fib(ctx, 30)
//	    fmt.Println(s.Name(), v) // 832040
//	}
package fib
