package chart

import "sort"

// counter tallies labels, remembering first-seen order.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if _, seen := c.counts[label]; !seen {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

// sortByCount orders labels by descending count; ties keep first-seen order.
func (c *counter) sortByCount() {
	sort.SliceStable(c.order, func(i, j int) bool {
		return c.counts[c.order[i]] > c.counts[c.order[j]]
	})
}

func (c *counter) truncate(n int) {
	if len(c.order) > n {
		c.order = c.order[:n]
	}
}

func (c *counter) chart(kind Kind, chartType, title, series string) *Chart {
	data := make([]int, len(c.order))
	for i, label := range c.order {
		data[i] = c.counts[label]
	}
	return &Chart{
		Kind:     kind,
		Type:     chartType,
		Title:    title,
		Labels:   append([]string{}, c.order...),
		Datasets: []Dataset{{Label: series, Data: data}},
	}
}
