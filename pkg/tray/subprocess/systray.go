package subprocess

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/getlantern/systray"
	"github.com/manifold/nativemenu/pkg/logging/zap"
	api "github.com/manifold/nativemenu/pkg/tray"
)

var (
	inbox = make(chan api.Message)
	log   = zap.NewQuietLogger()

	items   = make(map[uint64]*systray.MenuItem)
	itemsMu sync.Mutex
	outMu   sync.Mutex
)

// Run blocks running the tray until the host closes stdin or a stop signal
// arrives.
func Run() {
	go receiveMessages(inbox, os.Stdin)
	systray.Run(onReady, nil)
}

func sendMessage(msg api.Message) {
	b, err := json.Marshal(msg)
	if err != nil {
		log.Error(err)
		return
	}
	outMu.Lock()
	os.Stdout.Write(append(b, '\n'))
	outMu.Unlock()
}

func sendError(err error) {
	text := err.Error()
	sendMessage(api.Message{
		Type:  api.Error,
		Error: &text,
	})
}

func receiveMessages(ch chan api.Message, r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var msg api.Message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			sendError(err)
			continue
		}
		ch <- msg
	}
	if err := scanner.Err(); err != nil {
		sendError(err)
	}
	close(ch)
}

func onReady() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-sigCh
		systray.Quit()
	}()
	go func() {
		for msg := range inbox {
			switch msg.Type {
			case api.InitMenu:
				if msg.Menu != nil {
					initMenu(msg.Menu)
				}
			case api.ItemUpdate:
				if msg.Item != nil {
					updateItem(msg.Item)
				}
			default:
				log.Warn("unexpected message from host: ", msg.Type)
			}
		}
		systray.Quit()
	}()
}

func initMenu(menu *api.Menu) {
	systray.SetTitle(menu.Title)
	systray.SetTooltip(menu.Tooltip)

	for _, item := range menu.Items {
		if item.Separator {
			systray.AddSeparator()
			continue
		}
		menuItem := systray.AddMenuItem(indent(item), item.Tooltip)
		apply(menuItem, item)
		if item.Header {
			continue
		}

		itemsMu.Lock()
		items[item.Handle] = menuItem
		itemsMu.Unlock()

		go func(menuItem *systray.MenuItem, handle uint64) {
			for range menuItem.ClickedCh {
				sendMessage(api.Message{
					Type: api.ItemClicked,
					Item: &api.MenuItem{Handle: handle},
				})
			}
		}(menuItem, item.Handle)
	}
}

func updateItem(item *api.MenuItem) {
	itemsMu.Lock()
	menuItem, ok := items[item.Handle]
	itemsMu.Unlock()
	if !ok {
		log.Warn("update for unknown item ", item.Handle)
		return
	}
	apply(menuItem, *item)
}

func apply(menuItem *systray.MenuItem, item api.MenuItem) {
	if item.Checked {
		menuItem.Check()
	} else {
		menuItem.Uncheck()
	}
	if item.Enabled {
		menuItem.Enable()
	} else {
		menuItem.Disable()
	}
}

func indent(item api.MenuItem) string {
	return strings.Repeat("    ", item.Depth) + item.Title
}
