package nlcmp

// Sample is the canonical 8-pair input. Its sum is 13.
const Sample = `[1,1,3,1,1]
[1,1,5,1,1]

[[1],[2,3,4]]
[[1],4]

[9]
[[8,7,6]]

[[4,4],4,4]
[[4,4],4,4,4]

[7,7,7,7]
[7,7,7]

[]
[3]

[[[]]]
[[]]

[1,[2,[3,[4,[5,6,7]]]],8,9]
[1,[2,[3,[4,[5,6,0]]]],8,9]`

// RepeatSample returns n copies of Sample separated by blank lines. Pairs are
// indexed through all copies, the sum is 13*n + 32*n*(n-1)/2.
func RepeatSample(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, 0, n*(len(Sample)+2))
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, "\n\n"...)
		}
		b = append(b, Sample...)
	}
	return string(b)
}
