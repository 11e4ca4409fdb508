package pmpi

// mailboxes[from][to] is the channel a rank "from" uses to deliver a message
// addressed to rank "to". Buffered generously: ext-comm pairs exchange one
// message per Sendrecv call and the call sites in this module always drain
// what they send, so the buffer never needs to be unbounded in practice.
type mailboxes [][]chan []int32

const mailboxBuffer = 4

func newMailboxes(n int) mailboxes {
	mb := make(mailboxes, n)
	for i := range mb {
		mb[i] = make([]chan []int32, n)
		for j := range mb[i] {
			mb[i][j] = make(chan []int32, mailboxBuffer)
		}
	}
	return mb
}

// Sendrecv sends `send` to peer and returns what peer sent back in its
// matching Sendrecv(c.Rank(), ...) call. It mirrors MPI_Sendrecv: both sides
// issue the call concurrently and it returns once both the send has been
// delivered and a reply has arrived.
func (c *Comm) Sendrecv(peer int, send []int32) ([]int32, error) {
	if peer < 0 || peer >= c.w.n {
		return nil, &Error{Op: "Sendrecv", Msg: "peer rank out of range"}
	}
	if peer == c.rank {
		return nil, &Error{Op: "Sendrecv", Msg: "peer must differ from self"}
	}

	out := append([]int32(nil), send...)
	c.mailbox[c.rank][peer] <- out

	recv := <-c.mailbox[peer][c.rank]
	return recv, nil
}
