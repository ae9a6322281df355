package controller

// showError reveals msg and schedules its auto-hide. Each call starts a new
// generation; a timer only hides the error if no newer one has been shown.
func (c *Controller) showError(msg string) {
	c.errMu.Lock()
	defer c.errMu.Unlock()

	c.errGen++
	gen := c.errGen
	if c.errTimer != nil {
		c.errTimer.Stop()
	}
	c.errTimer = c.afterFunc(c.errorDismiss, func() { c.expireError(gen) })
	c.view.ShowError(msg)
}

// hideError hides the error surface and invalidates any pending timer.
func (c *Controller) hideError() {
	c.errMu.Lock()
	defer c.errMu.Unlock()

	c.errGen++
	if c.errTimer != nil {
		c.errTimer.Stop()
		c.errTimer = nil
	}
	c.view.HideError()
}

func (c *Controller) expireError(gen uint64) {
	c.errMu.Lock()
	defer c.errMu.Unlock()

	if gen != c.errGen {
		return
	}
	c.errTimer = nil
	c.view.HideError()
}
