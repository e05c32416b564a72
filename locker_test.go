package htrie

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockerBasicTx(t *testing.T) {
	l := NewLocker(New[string, int]())

	tx := l.Lock()
	tx.Insert("a", 1)
	tx.Insert("b", 2)
	tx.Unlock()

	rtx := l.RLock()
	v, err := rtx.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	rtx.Unlock()
}

func TestLockerPanicsOnDoubleUnlock(t *testing.T) {
	l := NewLocker(New[string, int]())
	tx := l.Lock()
	tx.Unlock()
	assert.Panics(t, func() { tx.Unlock() })
}

func TestLockerPanicsOnWriteInReadOnlyTx(t *testing.T) {
	l := NewLocker(New[string, int]())
	tx := l.RLock()
	defer tx.Unlock()
	assert.Panics(t, func() { tx.Insert("a", 1) })
}

func TestLockerParallelBalanceTransfer(t *testing.T) {
	tr := New[string, int]()
	l := NewLocker(tr)

	numAccounts := 10
	numTransactions := 2000
	initialBalance := 1000

	key := func(i int) string { return string(rune('a' + i)) }

	tx := l.Lock()
	for i := 0; i < numAccounts; i++ {
		tx.Insert(key(i), initialBalance)
	}
	tx.Unlock()
	total := numAccounts * initialBalance

	wg := &sync.WaitGroup{}
	for i := 0; i < numTransactions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a := rand.Intn(numAccounts)
			b := a
			for b == a {
				b = rand.Intn(numAccounts)
			}
			tx := l.Lock()
			defer tx.Unlock()
			balA, _ := tx.Get(key(a))
			balB, _ := tx.Get(key(b))
			if balA == 0 {
				return
			}
			amount := rand.Intn(balA)
			tx.Insert(key(a), balA-amount)
			tx.Insert(key(b), balB+amount)
		}()
	}
	wg.Wait()

	rtx := l.RLock()
	defer rtx.Unlock()
	sum := 0
	for i := 0; i < numAccounts; i++ {
		v, _ := rtx.Get(key(i))
		sum += v
	}
	assert.Equal(t, total, sum)
}
