package dmsort

// scanCopy runs the drop pass for pointer-free element types and returns the
// end of the sorted prefix. Dropped values stay in place in x until they are
// overwritten, which lets a rollback simply truncate the buffer.
func (s *sorter[E]) scanCopy(x []E) int {
	n := len(x)
	inRow := 0
	write, read := 0, 0

	for read < n {
		if write > 0 && s.less(x[read], x[write-1]) {
			if inRow == 0 && write > 1 && !s.less(x[read], x[write-2]) {
				// Fits between the last two kept elements. After the swap
				// x[read] holds the old predecessor, which belongs at write.
				x[read], x[write-1] = x[write-1], x[read]
				s.st.Swaps++
			} else if inRow < Recency {
				s.push(x[read])
				read++
				inRow++
				s.noteRun(inRow)
				continue
			} else {
				// Too many drops in a row: the kept element is the outlier.
				s.dropped = s.dropped[:len(s.dropped)-inRow]
				read -= inRow
				s.st.Restored += inRow
				s.st.Rollbacks++

				write--
				s.push(x[write])
				inRow = 0
				continue
			}
		}

		if read != write {
			x[write] = x[read]
			s.transfer()
		}
		read++
		write++
		inRow = 0
		s.st.Placed++
	}
	return write
}

// scanMove runs the drop pass without ever holding an element in two places.
// Each vacated slot is reset to the zero value, and a rollback moves the
// buffered elements back out of the buffer tail.
func (s *sorter[E]) scanMove(x []E) int {
	var zero E
	n := len(x)
	inRow := 0
	write, read := 0, 0

	for read < n {
		if write > 0 && s.less(x[read], x[write-1]) {
			if inRow == 0 && write > 1 && !s.less(x[read], x[write-2]) {
				x[read], x[write-1] = x[write-1], x[read]
				s.st.Swaps++
			} else if inRow < Recency {
				s.push(x[read])
				x[read] = zero
				read++
				inRow++
				s.noteRun(inRow)
				continue
			} else {
				for range inRow {
					read--
					last := len(s.dropped) - 1
					x[read] = s.dropped[last]
					s.dropped[last] = zero
					s.dropped = s.dropped[:last]
					s.transfer()
				}
				s.st.Restored += inRow
				s.st.Rollbacks++

				write--
				s.push(x[write])
				x[write] = zero
				inRow = 0
				continue
			}
		}

		if read != write {
			x[write] = x[read]
			x[read] = zero
			s.transfer()
		}
		read++
		write++
		inRow = 0
		s.st.Placed++
	}
	return write
}
