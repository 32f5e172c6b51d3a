package sequence

// complementTable maps each IUPAC nucleotide code to its complement.
// Codes without a defined complement map to themselves.
var complementTable = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	pairs := map[byte]byte{
		'A': 'T', 'T': 'A', 'G': 'C', 'C': 'G', 'U': 'A',
		'R': 'Y', 'Y': 'R', 'K': 'M', 'M': 'K',
		'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D',
		'S': 'S', 'W': 'W', 'N': 'N',
	}
	for from, to := range pairs {
		t[from] = to
	}
	return t
}()

// Complement returns the base-wise complement of [start, end) in forward
// order.
func (s *Sequence) Complement(start, end int) (string, error) {
	if err := s.checkRange(start, end); err != nil {
		return "", err
	}
	out := make([]byte, end-start)
	for i := start; i < end; i++ {
		out[i-start] = complementTable[s.residues[i]]
	}
	return string(out), nil
}

// ReverseComplement returns the reverse complement of [start, end): the
// text a minus-strand feature actually reads.
func (s *Sequence) ReverseComplement(start, end int) (string, error) {
	if err := s.checkRange(start, end); err != nil {
		return "", err
	}
	out := make([]byte, end-start)
	for i := start; i < end; i++ {
		out[end-1-i] = complementTable[s.residues[i]]
	}
	return string(out), nil
}
